package shared

// TokenGenerator produces random tokens drawn from a fixed alphabet.
// Persistence uses it for combination group identifiers; tests substitute
// a deterministic implementation.
type TokenGenerator interface {
	Generate(length int) (string, error)
}
