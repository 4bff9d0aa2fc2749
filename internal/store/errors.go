package store

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrStoreUnavailable means the database could not be reached or refused
	// the credentials.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrQuery means the store answered but the statement or scan failed.
	ErrQuery = errors.New("query error")

	// ErrInvalidSelector is returned for a catalog selector outside 0..7.
	ErrInvalidSelector = errors.New("invalid selector")
)

// MySQL server error numbers that mean the session never became usable.
const (
	erAccessDenied      = 1045
	erDBAccessDenied    = 1044
	erBadDB             = 1049
	erConCount          = 1040
	erHostNotPrivileged = 1130
	erServerShutdown    = 1053
)

// isConnectivity reports whether err came from reaching or authenticating
// against the store rather than from the statement itself.
func isConnectivity(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case erAccessDenied, erDBAccessDenied, erBadDB, erConCount, erHostNotPrivileged, erServerShutdown:
			return true
		}
	}
	return false
}

// classify wraps err with ErrStoreUnavailable or ErrQuery.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if isConnectivity(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrQuery, err)
}
