package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>?`)

// SanitizeBody strips HTML tags from the top-level string fields of JSON
// request bodies before they reach the handlers.
func SanitizeBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || !strings.Contains(c.GetHeader("Content-Type"), "application/json") {
			c.Next()
			return
		}
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Next()
			return
		}

		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			// Not a JSON object; leave the body untouched.
			c.Request.Body = io.NopCloser(bytes.NewReader(raw))
			c.Next()
			return
		}
		for key, value := range body {
			if s, ok := value.(string); ok {
				body[key] = htmlTagPattern.ReplaceAllString(s, "")
			}
		}
		cleaned, err := json.Marshal(body)
		if err != nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(raw))
			c.Next()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(cleaned))
		c.Request.ContentLength = int64(len(cleaned))
		c.Next()
	}
}
