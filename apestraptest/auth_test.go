package apestraptest

import (
	"context"
	"reflect"
	"testing"

	"github.com/iov-one/apestrap"
)

func TestAuth(t *testing.T) {
	a, b, c := NewCondition(), NewCondition(), NewCondition()

	cases := map[string]struct {
		auth     Auth
		want     []apestrap.Condition
		wantMiss apestrap.Condition
	}{
		"no signers": {
			wantMiss: a,
		},
		"single signer": {
			auth:     Auth{Signer: a},
			want:     []apestrap.Condition{a},
			wantMiss: b,
		},
		"many signers": {
			auth:     Auth{Signers: []apestrap.Condition{a, b}},
			want:     []apestrap.Condition{a, b},
			wantMiss: c,
		},
		"main signer comes first": {
			auth:     Auth{Signer: c, Signers: []apestrap.Condition{a, b}},
			want:     []apestrap.Condition{c, a, b},
			wantMiss: NewCondition(),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := tc.auth.GetConditions(nil)
			if !reflect.DeepEqual(tc.want, got) {
				t.Fatalf("unexpected conditions: %v", got)
			}
			for i, cond := range tc.want {
				if !tc.auth.HasAddress(nil, cond.Address()) {
					t.Errorf("condition %d (%s) address should be present", i, cond)
				}
			}
			if tc.auth.HasAddress(nil, tc.wantMiss.Address()) {
				t.Fatal("unexpected condition present")
			}
		})
	}
}

func TestAuthDoesNotModifySigners(t *testing.T) {
	signers := make([]apestrap.Condition, 1, 4)
	signers[0] = NewCondition()
	auth := Auth{Signer: NewCondition(), Signers: signers}

	_ = auth.GetConditions(nil)
	if got := signers[:2][1]; got != nil {
		t.Fatalf("signers backing array modified: %s", got)
	}
}

func TestCtxAuth(t *testing.T) {
	signers := []apestrap.Condition{NewCondition(), NewCondition()}
	payees := CtxAuth{Name: "payees"}
	admins := CtxAuth{Name: "admins"}

	ctx := payees.WithSigners(context.Background(), signers...)

	if got := payees.GetConditions(ctx); !reflect.DeepEqual(signers, got) {
		t.Fatalf("unexpected conditions: %v", got)
	}
	for i, s := range signers {
		if !payees.HasAddress(ctx, s.Address()) {
			t.Errorf("condition %d (%s) address should be present", i, s)
		}
	}
	if payees.HasAddress(ctx, NewCondition().Address()) {
		t.Fatal("random condition must not be present")
	}

	if got := admins.GetConditions(ctx); got != nil {
		t.Fatalf("other name must not see the signers: %v", got)
	}
	if admins.HasAddress(ctx, signers[0].Address()) {
		t.Fatal("other name must not see the signers")
	}
}
