// Package metadata keeps the console's own settings in the local state
// database: the Gateway access token and the content type edited last.
package metadata

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/sitecms/internal/common"
)

// Key names one setting. Only the keys declared here can be stored.
type Key string

const (
	AccessToken Key = common.AccessTokenMetadataKey
	LastEntity  Key = common.LastEntityMetadataKey
)

var ErrUnknownKey = errors.New("unknown setting")

func (k Key) valid() bool {
	switch k {
	case AccessToken, LastEntity:
		return true
	}
	return false
}

// Repository reads and writes settings. Lookup reports ok == false for a
// setting that was never stored or has been forgotten.
type Repository interface {
	Lookup(ctx context.Context, key Key) (value string, ok bool, err error)
	Store(ctx context.Context, key Key, value string) error
	Forget(ctx context.Context, key Key) error
}
