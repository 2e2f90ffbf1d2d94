package cropper

import (
	"fmt"
	"time"
)

// UniqueFilename returns "<base>_<unix-millis><ext>" for t.
func UniqueFilename(base, ext string, t time.Time) string {
	return fmt.Sprintf("%s_%d%s", base, t.UnixMilli(), ext)
}
