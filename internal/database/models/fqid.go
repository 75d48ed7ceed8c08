package models

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "organization-backend/internal/errors"
)

// FQID joins a collection and an id, e.g. "meeting/3".
func FQID(collection string, id ID) string {
	return collection + "/" + id.String()
}

// SplitFQID splits "collection/id".
func SplitFQID(fqid string) (string, ID, error) {
	col, idS, ok := strings.Cut(fqid, "/")
	if !ok || col == "" {
		return "", 0, apperrors.NewValidationError("fqid", fmt.Sprintf("invalid fqid: %q", fqid))
	}
	n, err := strconv.ParseInt(idS, 10, 64)
	if err != nil || !ID(n).Valid() {
		return "", 0, apperrors.NewValidationError("fqid", fmt.Sprintf("invalid fqid: %q", fqid))
	}
	return col, ID(n), nil
}
