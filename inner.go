package imagebatch

import "github.com/labimaging/imagebatch/core"

// Inner exposes the underlying core.Runner for advanced use (e.g.,
// direct registry access in tests).  Prefer the high-level API for
// normal usage.
func (b *Batcher) Inner() *core.Runner { return b.runner }
