package nodedef

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/matzehuels/shadegraph/pkg/cache"
	"github.com/matzehuels/shadegraph/pkg/httputil"
	"github.com/matzehuels/shadegraph/pkg/observability"
)

// libraryTTL bounds how long a fetched remote library stays cached.
const libraryTTL = 24 * time.Hour

// FetchLibrary downloads a YAML definition library from url and adds its
// definitions to the registry. Fetched bytes are cached, so repeated
// editor launches don't hit the network.
func FetchLibrary(ctx context.Context, r *Registry, c cache.Cache, url string) error {
	if c == nil {
		c = cache.NewNullCache()
	}
	key := cache.LibraryKey(url)

	data, hit, err := c.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("cache read for %s: %w", url, err)
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, "library")
	} else {
		observability.Cache().OnCacheMiss(ctx, "library")
		data, err = httputil.Fetch(ctx, http.DefaultClient, url)
		if err != nil {
			return err
		}
		if err := c.Set(ctx, key, data, libraryTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "library", len(data))
		}
	}

	defs, err := ParseLibrary(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("library %s: %w", url, err)
	}
	r.Add(defs...)
	return nil
}
