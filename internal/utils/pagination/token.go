package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// EncodeSequenceToken creates a base64 encoded cursor pointing below the given log
// sequence of a session.
func EncodeSequenceToken(sessionID string, sequence int64) string {
	tokenStr := fmt.Sprintf("%s|%d", sessionID, sequence)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeSequenceToken parses a token produced by EncodeSequenceToken. The token must
// belong to sessionID.
func DecodeSequenceToken(token, sessionID string) (int64, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	if parts[0] != sessionID {
		return 0, fmt.Errorf("pagination token belongs to another session")
	}
	sequence, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || sequence < 0 {
		return 0, fmt.Errorf("invalid pagination token format (sequence parse): %v", err)
	}
	return sequence, nil
}
