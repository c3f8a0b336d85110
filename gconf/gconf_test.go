package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/store"
	"github.com/stretchr/testify/assert"
)

type MyConfig struct {
	Number int64            `json:"number"`
	Text   string           `json:"text"`
	Addr   apestrap.Address `json:"addr"`
}

func (c *MyConfig) Validate() error {
	if c.Number < 0 {
		return errors.Wrap(errors.ErrInput, "negative number")
	}
	if c.Addr != nil {
		return c.Addr.Validate()
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	addr := apestrap.NewAddress([]byte("owner"))

	cases := map[string]struct {
		Conf        *MyConfig
		WantSaveErr *errors.Error
	}{
		"all fields": {
			Conf: &MyConfig{Number: 852151421, Text: "foobar", Addr: addr},
		},
		"zero values": {
			Conf: &MyConfig{},
		},
		"invalid address cannot be saved": {
			Conf:        &MyConfig{Addr: apestrap.Address("too short")},
			WantSaveErr: errors.ErrInput,
		},
		"invalid number cannot be saved": {
			Conf:        &MyConfig{Number: -1},
			WantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				return
			}

			var got MyConfig
			if err := Load(db, "mypkg", &got); err != nil {
				t.Fatalf("cannot load configuration: %s", err)
			}
			assert.Equal(t, tc.Conf.Number, got.Number)
			assert.Equal(t, tc.Conf.Text, got.Text)
			assert.True(t, tc.Conf.Addr.Equals(got.Addr))
		})
	}
}

func TestLoadMissing(t *testing.T) {
	var conf MyConfig
	err := Load(store.MemStore(), "mypkg", &conf)
	if !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		want    MyConfig
	}{
		"configuration is loaded": {
			genesis: `{"conf": {"mypkg": {"number": 42, "text": "apes"}}}`,
			want:    MyConfig{Number: 42, Text: "apes"},
		},
		"missing package configuration": {
			genesis: `{"conf": {"otherpkg": {"number": 42}}}`,
			wantErr: errors.ErrNotFound,
		},
		"missing conf section": {
			genesis: `{}`,
			wantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			genesis: `{"conf": {"mypkg": {"number": -2}}}`,
			wantErr: errors.ErrInput,
		},
		"malformed configuration": {
			genesis: `{"conf": {"mypkg": {"number": "x"}}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts apestrap.Options
			if err := json.Unmarshal([]byte(tc.genesis), &opts); err != nil {
				t.Fatalf("cannot parse genesis: %s", err)
			}
			db := store.MemStore()
			var conf MyConfig
			if err := InitConfig(db, opts, "mypkg", &conf); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			var got MyConfig
			if err := Load(db, "mypkg", &got); err != nil {
				t.Fatalf("cannot load: %s", err)
			}
			assert.Equal(t, tc.want.Number, got.Number)
			assert.Equal(t, tc.want.Text, got.Text)
		})
	}
}
