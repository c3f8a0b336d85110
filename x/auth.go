package x

import (
	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
)

// Authenticator reports the conditions that signed the transaction being
// processed. Handlers receive it in their constructor, so that no
// extension depends on a signature scheme.
type Authenticator interface {
	// GetConditions returns all signers, the main signer first.
	GetConditions(apestrap.Context) []apestrap.Condition
	// HasAddress returns true if any signer has the address.
	HasAddress(apestrap.Context, apestrap.Address) bool
}

// MainSigner returns the first signer, or nil for an unsigned transaction.
func MainSigner(ctx apestrap.Context, auth Authenticator) apestrap.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// MainSignerAddress returns the address of the main signer, or nil for an
// unsigned transaction.
func MainSignerAddress(ctx apestrap.Context, auth Authenticator) apestrap.Address {
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return nil
	}
	return signer.Address()
}

// RequireSigner fails with ErrUnauthorized unless addr signed the
// transaction. The role names the missing party in the error.
func RequireSigner(ctx apestrap.Context, auth Authenticator, addr apestrap.Address, role string) error {
	if len(addr) == 0 || !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s signature missing", role)
	}
	return nil
}
