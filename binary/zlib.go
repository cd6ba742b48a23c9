package binary

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// ZlibSuffix terminates every complete message of a zlib-stream transport.
var ZlibSuffix = []byte{0x00, 0x00, 0xff, 0xff}

const windowSize = 32 * 1024

func ZlibUncompress(src []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, errors.Wrap(err, "zlib header")
	}
	defer r.Close()
	var out bytes.Buffer
	if _, err = out.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "zlib inflate")
	}
	return out.Bytes(), nil
}

type zlibWriter struct {
	w   *zlib.Writer
	buf *bytes.Buffer
}

var zlibPool = sync.Pool{
	New: func() any {
		buf := new(bytes.Buffer)
		w := zlib.NewWriter(buf)
		return &zlibWriter{
			w:   w,
			buf: buf,
		}
	},
}

// ZlibCompress is the counterpart of ZlibUncompress, for hosts that send or
// replay individually compressed payloads.
func ZlibCompress(data []byte) []byte {
	zw := zlibPool.Get().(*zlibWriter)
	zw.buf.Reset()
	zw.w.Reset(zw.buf)
	_, _ = zw.w.Write(data)
	_ = zw.w.Close()
	ret := make([]byte, zw.buf.Len())
	copy(ret, zw.buf.Bytes())
	// See https://golang.org/issue/23199
	if zw.buf.Cap() < 1<<16 {
		zlibPool.Put(zw)
	}
	return ret
}

// ZlibStream inflates a zlib-stream transport: a single deflate context
// shared by every message, each message ending with a sync flush.
//
// A sync flush leaves the decoder on a block boundary, so the whole decoder
// state is the last 32KiB of output. Every message is inflated by a fresh
// flate reader primed with that window.
//
// ZlibStream is not safe for concurrent use.
type ZlibStream struct {
	pending []byte
	window  []byte
	started bool
}

// Feed appends a transport frame. It returns the inflated message once the
// buffered frames end with ZlibSuffix, or nil while the message is partial.
func (z *ZlibStream) Feed(frame []byte) ([]byte, error) {
	z.pending = append(z.pending, frame...)
	if !bytes.HasSuffix(z.pending, ZlibSuffix) {
		return nil, nil
	}
	data := z.pending
	z.pending = nil
	if !z.started {
		if len(data) < 2 || data[0]&0x0f != 8 || (uint16(data[0])<<8|uint16(data[1]))%31 != 0 {
			return nil, errors.New("zlib stream: invalid header")
		}
		data = data[2:]
		z.started = true
	}
	r := flate.NewReaderDict(bytes.NewReader(data), z.window)
	out, err := io.ReadAll(r)
	// the frame ends right after the flush marker, mid-stream
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, errors.Wrap(err, "zlib stream: inflate")
	}
	z.window = append(z.window, out...)
	if len(z.window) > windowSize {
		z.window = append(z.window[:0:0], z.window[len(z.window)-windowSize:]...)
	}
	return out, nil
}

// Reset drops all stream state, for use after the transport reconnects.
func (z *ZlibStream) Reset() {
	z.pending = nil
	z.window = nil
	z.started = false
}
