package output

import (
	"bufio"
	"hash"
	"io"
	"os"
	"strings"

	"blainsmith.com/go/seahash"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"github.com/grailbio/bide/seq"
)

// FileSink is the file-mode sink. Destinations ending in ".gz" are
// transparently gzip-compressed; destinations with an "s3://" scheme are
// written to a local temp file first and uploaded on Close.
type FileSink struct {
	path     string
	s3Dest   string // non-empty if path is a local staging copy for an S3 upload
	f        *os.File
	gz       *gzip.Writer
	w        *bufio.Writer
	checksum hash.Hash64
	closed   bool
}

// NewFileSink opens dest for writing. dest may be a local path (optionally
// ending in ".gz") or an "s3://bucket/key" URL.
func NewFileSink(dest string) (*FileSink, error) {
	localPath := dest
	s3Dest := ""
	if strings.HasPrefix(dest, "s3://") {
		s3Dest = dest
		tmp, err := os.CreateTemp("", "bide-mine-*.out")
		if err != nil {
			return nil, errors.Wrap(err, "output: creating S3 staging file")
		}
		localPath = tmp.Name()
		tmp.Close()
	}

	f, err := os.Create(localPath)
	if err != nil {
		return nil, errors.Wrapf(err, "output: creating %s", localPath)
	}

	s := &FileSink{path: localPath, s3Dest: s3Dest, f: f, checksum: seahash.New()}
	var w io.Writer = f
	if strings.HasSuffix(dest, ".gz") {
		s.gz = gzip.NewWriter(f)
		w = s.gz
	}
	s.w = bufio.NewWriter(io.MultiWriter(w, checksumWriter{s.checksum}))
	return s, nil
}

// checksumWriter adapts a hash.Hash64 to io.Writer so it can sit inside an
// io.MultiWriter alongside the real output stream.
type checksumWriter struct{ h hash.Hash64 }

func (c checksumWriter) Write(p []byte) (int, error) { return c.h.Write(p) }

// Emit writes one pattern line.
func (s *FileSink) Emit(p seq.SequentialPattern) error {
	if _, err := s.w.WriteString(FormatLine(p)); err != nil {
		return errors.Wrap(err, "output: writing pattern line")
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return errors.Wrap(err, "output: writing newline")
	}
	return nil
}

// Checksum returns the running seahash checksum of the uncompressed pattern
// text flushed so far; after Close it covers every line emitted.
func (s *FileSink) Checksum() uint64 { return s.checksum.Sum64() }

// Close flushes and closes the local file, uploading it to S3 first if the
// sink's destination was an s3:// URL.
func (s *FileSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.w.Flush(); err != nil {
		return errors.Wrap(err, "output: flushing")
	}
	if s.gz != nil {
		if err := s.gz.Close(); err != nil {
			return errors.Wrap(err, "output: closing gzip writer")
		}
	}
	if err := s.f.Close(); err != nil {
		return errors.Wrap(err, "output: closing file")
	}
	if s.s3Dest == "" {
		return nil
	}
	defer os.Remove(s.path)
	return uploadToS3(s.path, s.s3Dest)
}

func uploadToS3(localPath, dest string) error {
	bucket, key, err := parseS3URL(dest)
	if err != nil {
		return errors.Wrap(err, "output: parsing S3 destination")
	}
	f, err := os.Open(localPath)
	if err != nil {
		return errors.Wrap(err, "output: reopening staged file for upload")
	}
	defer f.Close()

	sess, err := session.NewSession()
	if err != nil {
		return errors.Wrap(err, "output: creating AWS session")
	}
	uploader := s3manager.NewUploader(sess)
	_, err = uploader.Upload(&s3manager.UploadInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   f,
	})
	if err != nil {
		return errors.Wrapf(err, "output: uploading to %s", dest)
	}
	return nil
}

func parseS3URL(dest string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(dest, "s3://")
	i := strings.IndexByte(rest, '/')
	if i < 0 {
		return "", "", errors.Errorf("output: %q is missing a key after the bucket", dest)
	}
	return rest[:i], rest[i+1:], nil
}
