package http

import (
	"bytes"
	"context"
	"io"
)

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: &buf,
//	    Total:  -1,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d bytes\n", written)
//	    },
//	}
//	io.Copy(pw, body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes, -1 if unknown.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// contextReader fails reads once its context is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}

// DrainStream reads r to completion and returns everything it produced
// as a single buffer.
//
// The stream is considered finished only when r returns io.EOF. Any other
// read error, or cancellation of ctx between reads, is returned together
// with a nil buffer; partial data is never handed back.
//
// onProgress is optional and receives the running byte count after every
// chunk (total is always -1 because streams carry no length).
//
// Example:
//
//	body, err := DrainStream(ctx, resp.Body, nil)
func DrainStream(ctx context.Context, r io.Reader, onProgress func(written, total int64)) ([]byte, error) {
	var buf bytes.Buffer
	var w io.Writer = &buf
	if onProgress != nil {
		w = &ProgressWriter{Writer: &buf, Total: -1, OnUpdate: onProgress}
	}

	if _, err := io.Copy(w, contextReader{ctx: ctx, r: r}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
