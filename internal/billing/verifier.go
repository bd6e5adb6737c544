// Package billing abstracts purchase-receipt verification with the
// platform billing system.
package billing

import "context"

// ReceiptVerifier checks a purchase token against the billing platform.
// The handler layer depends on this interface so a real Play Billing or
// App Store client can be substituted without touching handler logic.
type ReceiptVerifier interface {
	// Verify reports whether the purchase token is valid. A false return
	// rejects the purchase; an error means verification could not be
	// attempted at all.
	Verify(ctx context.Context, purchaseToken string) (bool, error)
}

// MockVerifier approves every token.
//
// Placeholder until real billing-API receipt validation is wired in;
// the purchase is still guarded by catalog and duplicate-token checks.
type MockVerifier struct{}

// NewMockVerifier returns the always-approve verifier.
func NewMockVerifier() *MockVerifier {
	return &MockVerifier{}
}

// Verify always returns true.
func (v *MockVerifier) Verify(ctx context.Context, purchaseToken string) (bool, error) {
	return true, nil
}
