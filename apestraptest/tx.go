package apestraptest

import "github.com/iov-one/apestrap"

// Tx is a transaction holding a single message. When Err is set, reading
// the message fails with it.
type Tx struct {
	Msg apestrap.Msg
	Err error
}

var _ apestrap.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (apestrap.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

// Routed returns a transaction whose message is dispatched to path.
func Routed(path string) *Tx {
	return &Tx{Msg: &Msg{RoutePath: path}}
}

// Msg only knows its route. Validate returns Err.
type Msg struct {
	RoutePath string
	Err       error
}

var _ apestrap.Msg = (*Msg)(nil)

func (m *Msg) Path() string { return m.RoutePath }

func (m *Msg) Validate() error { return m.Err }
