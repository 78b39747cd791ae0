package mbox

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/sisifus/jobflow/internal/model"
)

// maxIDLength bounds stored email IDs; Message-ID headers in the wild
// are occasionally garbage.
const maxIDLength = 100

// ParseMessage parses one raw RFC 5322 message into an Email. A
// message without a usable Message-ID gets a generated UUID.
func ParseMessage(raw []byte) (model.Email, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return model.Email{}, fmt.Errorf("failed to parse message headers: %w", err)
	}

	email := model.Email{
		ID:      messageID(msg.Header.Get("Message-ID")),
		Subject: decodeHeader(msg.Header.Get("Subject")),
		Sender:  model.ParseSender(decodeHeader(msg.Header.Get("From"))),
		RawDate: msg.Header.Get("Date"),
	}

	if date, dateErr := msg.Header.Date(); dateErr == nil {
		email.Date = date
	}

	body, err := extractBody(msg.Header.Get("Content-Type"), msg.Header.Get("Content-Transfer-Encoding"), msg.Body)
	if err != nil {
		return model.Email{}, fmt.Errorf("failed to extract body: %w", err)
	}
	email.Body = body

	return email, nil
}

func messageID(header string) string {
	id := strings.TrimSpace(header)
	id = strings.TrimPrefix(id, "<")
	id = strings.TrimSuffix(id, ">")
	if id == "" {
		return uuid.New().String()
	}
	if len(id) > maxIDLength {
		id = id[:maxIDLength]
	}
	return id
}

var headerDecoder = mime.WordDecoder{}

// decodeHeader decodes RFC 2047 encoded-words. Undecodable headers are
// returned raw rather than dropped.
func decodeHeader(value string) string {
	decoded, err := headerDecoder.DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}

// extractBody walks the message body and returns plain text. Plain
// text parts are preferred; HTML parts are converted to text when no
// plain text is present.
func extractBody(contentType, transferEncoding string, body io.Reader) (string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		// No or malformed Content-Type: treat as plain text.
		mediaType = "text/plain"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return "", fmt.Errorf("multipart message without boundary")
		}
		return extractMultipart(body, boundary)
	}

	payload, err := decodeTransferEncoding(body, transferEncoding)
	if err != nil {
		return "", err
	}
	if mediaType == "text/html" {
		return htmlToText(payload), nil
	}
	return string(payload), nil
}

func extractMultipart(body io.Reader, boundary string) (string, error) {
	var plain, htmlText strings.Builder

	reader := multipart.NewReader(body, boundary)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Keep whatever parts were readable.
			break
		}

		partType, partParams, typeErr := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if typeErr != nil {
			continue
		}

		switch {
		case strings.HasPrefix(partType, "multipart/"):
			if nested, nestedErr := extractMultipart(part, partParams["boundary"]); nestedErr == nil && plain.Len() == 0 {
				plain.WriteString(nested)
			}
		case partType == "text/plain":
			payload, decErr := decodeTransferEncoding(part, part.Header.Get("Content-Transfer-Encoding"))
			if decErr == nil {
				plain.Write(payload)
			}
		case partType == "text/html":
			if htmlText.Len() == 0 {
				payload, decErr := decodeTransferEncoding(part, part.Header.Get("Content-Transfer-Encoding"))
				if decErr == nil {
					htmlText.WriteString(htmlToText(payload))
				}
			}
		}
	}

	if plain.Len() > 0 {
		return plain.String(), nil
	}
	return htmlText.String(), nil
}

func decodeTransferEncoding(r io.Reader, encoding string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		r = base64.NewDecoder(base64.StdEncoding, newWhitespaceStripper(r))
	case "quoted-printable":
		r = quotedprintable.NewReader(r)
	}

	payload, err := io.ReadAll(r)
	if err != nil && len(payload) == 0 {
		return nil, fmt.Errorf("failed to decode part: %w", err)
	}
	// Partial reads of sloppy encodings keep what was decodable.
	return payload, nil
}

// htmlToText strips markup and returns the visible text, separated by
// single spaces.
func htmlToText(payload []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(payload))

	var out strings.Builder
	skipDepth := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(out.String())
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if skippedTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if skippedTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := strings.TrimSpace(string(tokenizer.Text()))
			if text == "" {
				continue
			}
			if out.Len() > 0 {
				out.WriteByte(' ')
			}
			out.WriteString(text)
		}
	}
}

func skippedTag(name string) bool {
	return name == "script" || name == "style" || name == "head"
}

// whitespaceStripper removes whitespace so base64 bodies wrapped at 76
// columns decode cleanly.
type whitespaceStripper struct {
	r io.Reader
}

func newWhitespaceStripper(r io.Reader) io.Reader {
	return &whitespaceStripper{r: r}
}

func (w *whitespaceStripper) Read(p []byte) (int, error) {
	buf := make([]byte, len(p))
	for {
		n, err := w.r.Read(buf)
		kept := 0
		for _, b := range buf[:n] {
			if b == '\r' || b == '\n' || b == ' ' || b == '\t' {
				continue
			}
			p[kept] = b
			kept++
		}
		if kept > 0 || err != nil {
			return kept, err
		}
	}
}
