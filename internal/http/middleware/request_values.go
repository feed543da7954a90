package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
)

// requestValue resolves path.x, query.x, header.x or body.x (dot paths allowed
// in body, e.g. body.owner.id) from the request.
func requestValue(c *gin.Context, source string) (interface{}, error) {
	parts := strings.SplitN(source, ".", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid source format: %s (expected source.field)", source)
	}
	sourceType, fieldName := parts[0], parts[1]

	switch sourceType {
	case "path":
		if value := c.Param(fieldName); value != "" {
			return value, nil
		}
		return nil, fmt.Errorf("path parameter '%s' not found", fieldName)

	case "query":
		if value := c.Query(fieldName); value != "" {
			return value, nil
		}
		return nil, fmt.Errorf("query parameter '%s' not found", fieldName)

	case "header":
		if value := c.GetHeader(fieldName); value != "" {
			return value, nil
		}
		return nil, fmt.Errorf("header '%s' not found", fieldName)

	case "body":
		body, err := peekJSONBody(c)
		if err != nil {
			return nil, err
		}
		value := nestedField(body, fieldName)
		if value == nil {
			return nil, fmt.Errorf("body field '%s' not found", fieldName)
		}
		return value, nil

	default:
		return nil, fmt.Errorf("unsupported source type: %s", sourceType)
	}
}

// tokenValue resolves token.claim from the claims map
func tokenValue(source string, tokenClaims map[string]interface{}) (interface{}, error) {
	parts := strings.SplitN(source, ".", 2)
	if len(parts) != 2 || parts[0] != "token" {
		return nil, fmt.Errorf("invalid token source: %s (expected token.claim)", source)
	}

	value, exists := tokenClaims[parts[1]]
	if !exists {
		return nil, fmt.Errorf("token claim '%s' not found", parts[1])
	}
	return value, nil
}

// peekJSONBody decodes the body and puts it back for the handler
func peekJSONBody(c *gin.Context) (map[string]interface{}, error) {
	if c.Request.Body == nil {
		return nil, fmt.Errorf("request has no body")
	}
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	var data map[string]interface{}
	if err := json.Unmarshal(bodyBytes, &data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON body: %w", err)
	}
	return data, nil
}

func nestedField(data map[string]interface{}, fieldPath string) interface{} {
	current := data
	keys := strings.Split(fieldPath, ".")
	for i, key := range keys {
		value, exists := current[key]
		if !exists {
			return nil
		}
		if i == len(keys)-1 {
			return value
		}
		nested, ok := value.(map[string]interface{})
		if !ok {
			return nil
		}
		current = nested
	}
	return nil
}
