package auth

import (
	"errors"
	"fmt"
)

var _ LoginProvider = (*DisabledLoginProvider)(nil)

// DisabledLoginProvider rejects every username and secret login. Git over
// OAuth is not supported by this integration, so a host reaching it is
// misconfigured.
type DisabledLoginProvider struct {
	pluginName string
}

// NewDisabledLoginProvider creates a DisabledLoginProvider reporting pluginName.
func NewDisabledLoginProvider(pluginName string) *DisabledLoginProvider {
	return &DisabledLoginProvider{pluginName: pluginName}
}

// Login always returns an error wrapping errors.ErrUnsupported.
func (p *DisabledLoginProvider) Login(username, secret string) (*UserInfo, error) {
	return nil, fmt.Errorf("git over OAuth is not implemented by %s: %w", p.pluginName, errors.ErrUnsupported)
}
