package providers

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
)

func defaultExchangeCode(ctx context.Context, p Provider, code string) (*oauth2.Token, error) {
	return p.OAuth2Config().Exchange(ctx, code)
}

// endpoint joins a provider base URL and an absolute path.
func endpoint(baseURL, path string) string {
	return fmt.Sprintf("%s%s", strings.TrimSuffix(baseURL, "/"), path)
}
