package ring

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"mime/multipart"
	"strconv"
)

// fileField is the form part carrying an uploaded structure.
const fileField = "file"

// encodeForm writes fields and one file part as multipart/form-data.
// The boundary is derived from the content, so equal input always yields
// byte-identical output.
func encodeForm(fields []Field, fileName string, contents []byte) ([]byte, string, error) {
	boundary := formBoundary(fields, fileName, contents)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(boundary); err != nil {
		return nil, "", err
	}
	for _, f := range fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", err
		}
	}
	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(contents); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func formBoundary(fields []Field, fileName string, contents []byte) string {
	h := sha256.New()
	for _, f := range fields {
		h.Write([]byte(f.Name))
		h.Write([]byte{0})
		h.Write([]byte(f.Value))
		h.Write([]byte{0})
	}
	h.Write([]byte(fileName))
	h.Write([]byte{0})
	h.Write(contents)
	sum := h.Sum(nil)

	// A boundary must not occur inside the payload; rehash until it doesn't.
	for i := 0; ; i++ {
		b := "ring-" + hex.EncodeToString(sum[:16])
		if !bytes.Contains(contents, []byte(b)) {
			return b
		}
		next := sha256.Sum256(append(sum, strconv.Itoa(i)...))
		sum = next[:]
	}
}
