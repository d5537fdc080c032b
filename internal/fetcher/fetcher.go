// Package fetcher loads assessment inputs: the disallowed-domain list and
// account files, from local paths or HTTP/FTP sources.
package fetcher

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// Opener retrieves a source URL as a byte stream.
type Opener interface {
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// Open dispatches on the source's scheme: http(s) and ftp go over the
// network, anything else is treated as a local file path. The caller must
// close the returned reader.
func Open(ctx context.Context, source string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return NewHTTPFetcher(HTTPOptions{}).Download(ctx, source)
	case strings.HasPrefix(source, "ftp://"):
		return NewFTPFetcher(FTPOptions{}).Download(ctx, source)
	default:
		f, err := os.Open(strings.TrimPrefix(source, "file://"))
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: open file")
		}
		return f, nil
	}
}
