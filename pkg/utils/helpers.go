package utils

import (
	"database/sql"
	"strings"
)

func StringPtr(s string) *string {
	return &s
}

func NullStringToStrPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

func NullStringToString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// NormalizeUpper trim + majuscules (noms, codes, villes).
func NormalizeUpper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeLower trim + minuscules (emails).
func NormalizeLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
