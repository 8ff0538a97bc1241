package input

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"slices"

	"github.com/dmitrymomot/input/core/sanitizer"
)

// Upload error codes stored under a file descriptor's "error" key.
const (
	UploadErrOK        = 0 // stored successfully
	UploadErrIniSize   = 1 // larger than the configured file size limit
	UploadErrCantWrite = 7 // the upload store failed
)

// Keys of an upload descriptor in the files namespace.
const (
	FileName    = "name"
	FileType    = "type"
	FileSize    = "size"
	FileTmpName = "tmp_name"
	FileError   = "error"
	FileHeader  = "header"
)

// fileParams builds the files namespace. A field carrying one file maps to a
// descriptor of scalars. A field carrying several files, or named with
// brackets such as "docs[]", maps to a descriptor whose entries are []any with
// one element per file.
func fileParams(ctx context.Context, fields map[string][]*multipart.FileHeader, o sourceOptions) (Params, error) {
	out := Params{}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)

	var errs []error
	for _, field := range names {
		headers := fields[field]
		base, segments := splitName(field)
		if base == "" || len(headers) == 0 {
			continue
		}

		descriptors := make([]Params, 0, len(headers))
		for _, fh := range headers {
			d, err := describeUpload(ctx, fh, o)
			if err != nil {
				errs = append(errs, err)
			}
			descriptors = append(descriptors, d)
		}

		if len(descriptors) == 1 && len(segments) == 0 {
			out[base] = descriptors[0]
			continue
		}
		out[base] = groupDescriptors(descriptors)
	}

	return out, errors.Join(errs...)
}

func describeUpload(ctx context.Context, fh *multipart.FileHeader, o sourceOptions) (Params, error) {
	d := Params{
		FileName:    sanitizer.Filename(fh.Filename),
		FileType:    fh.Header.Get("Content-Type"),
		FileSize:    fh.Size,
		FileTmpName: "",
		FileError:   UploadErrOK,
		FileHeader:  fh,
	}

	switch {
	case o.maxFileSize > 0 && fh.Size > o.maxFileSize:
		d[FileError] = UploadErrIniSize
		return d, nil
	case o.store == nil:
		return d, nil
	}

	location, err := o.store.Store(ctx, fh)
	if err != nil {
		d[FileError] = UploadErrCantWrite
		return d, fmt.Errorf("%w: %s: %w", ErrFailedToStoreUpload, d[FileName], err)
	}
	d[FileTmpName] = location
	return d, nil
}

// groupDescriptors transposes per-file descriptors into one descriptor of
// parallel lists.
func groupDescriptors(descriptors []Params) Params {
	keys := []string{FileName, FileType, FileSize, FileTmpName, FileError, FileHeader}
	out := make(Params, len(keys))
	for _, key := range keys {
		list := make([]any, len(descriptors))
		for i, d := range descriptors {
			list[i] = d[key]
		}
		out[key] = list
	}
	return out
}
