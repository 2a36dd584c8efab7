package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/INLOpen/pgctledit/core"
	"github.com/INLOpen/pgctledit/override"
	"github.com/INLOpen/pgctledit/walfile"
)

// usageError marks option-level failures that should print the --help hint.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// parseUint32 parses a numeric option value. Base 0, so decimal, octal and
// 0x-prefixed hex forms are all accepted.
func parseUint32(option, value string) (uint32, error) {
	v, err := strconv.ParseUint(value, 0, 32)
	if err != nil {
		return 0, usagef("invalid argument for option %s: %q", option, value)
	}
	return uint32(v), nil
}

// parsePair parses a "first,second" option value.
func parsePair(option, value string) (uint32, uint32, error) {
	first, second, ok := strings.Cut(value, ",")
	if !ok {
		return 0, 0, usagef("invalid argument for option %s: %q", option, value)
	}
	a, err := parseUint32(option, first)
	if err != nil {
		return 0, 0, err
	}
	b, err := parseUint32(option, second)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// buildOverrides validates the raw option values and assembles the override
// set. The returned WAL file name is decoded later, once the segment size in
// effect is known. Every range and sentinel rule lives here; the override
// package performs no rejection of its own.
func buildOverrides(opts *cliOptions) (override.Overrides, string, error) {
	ov := override.New()
	var walName string

	if opts.nextOid != "" {
		v, err := parseUint32("--next-oid", opts.nextOid)
		if err != nil {
			return ov, "", err
		}
		if v == 0 {
			return ov, "", usagef("OID (--next-oid) must not be 0")
		}
		ov.NextOid = v
	}

	if opts.nextXid != "" {
		v, err := parseUint32("--next-transaction-id", opts.nextXid)
		if err != nil {
			return ov, "", err
		}
		if !core.TransactionIDIsNormal(v) {
			return ov, "", usagef("transaction ID (--next-transaction-id) must be greater than or equal to %d", core.FirstNormalTransactionID)
		}
		ov.NextXid = v
	}

	if opts.multiIDs != "" {
		next, oldest, err := parsePair("--multixact-ids", opts.multiIDs)
		if err != nil {
			return ov, "", err
		}
		if next == core.InvalidMultiXactID {
			return ov, "", usagef("multitransaction ID (--multixact-ids) must not be 0")
		}
		if oldest == core.InvalidMultiXactID {
			return ov, "", usagef("oldest multitransaction ID (--multixact-ids) must not be 0")
		}
		ov.NextMulti = next
		ov.OldestMulti = oldest
	}

	if opts.multiOffset != "" {
		v, err := parseUint32("--multixact-offset", opts.multiOffset)
		if err != nil {
			return ov, "", err
		}
		if v == override.Unset {
			return ov, "", usagef("multitransaction offset (--multixact-offset) must not be -1")
		}
		ov.NextMultiOffset = v
	}

	if opts.commitTsIDs != "" {
		oldest, newest, err := parsePair("--commit-timestamp-ids", opts.commitTsIDs)
		if err != nil {
			return ov, "", err
		}
		for _, v := range []uint32{oldest, newest} {
			if v != core.InvalidTransactionID && !core.TransactionIDIsNormal(v) {
				return ov, "", usagef("transaction ID (--commit-timestamp-ids) must be either %d or greater than or equal to %d",
					core.InvalidTransactionID, core.FirstNormalTransactionID)
			}
		}
		ov.OldestCommitTsXid = oldest
		ov.NewestCommitTsXid = newest
	}

	if opts.xidEpoch != "" {
		v, err := parseUint32("--epoch", opts.xidEpoch)
		if err != nil {
			return ov, "", err
		}
		if v == override.Unset {
			return ov, "", usagef("transaction ID epoch (--epoch) must not be -1")
		}
		ov.XidEpoch = v
	}

	if opts.oldestXid != "" {
		v, err := parseUint32("--oldest-transaction-id", opts.oldestXid)
		if err != nil {
			return ov, "", err
		}
		if !core.TransactionIDIsNormal(v) {
			return ov, "", usagef("oldest transaction ID (--oldest-transaction-id) must be greater than or equal to %d", core.FirstNormalTransactionID)
		}
		ov.OldestXid = v
	}

	if opts.nextWALFile != "" {
		if !walfile.IsFileName(opts.nextWALFile) {
			return ov, "", usagef("invalid argument for option %s: %q", "--next-wal-file", opts.nextWALFile)
		}
		walName = opts.nextWALFile
	}

	if opts.walSegSize != "" {
		mb, err := strconv.Atoi(opts.walSegSize)
		if err != nil || mb < 1 || mb > 1024 {
			return ov, "", usagef("argument of %s must be an integer between 1 and 1024", "--wal-segsize")
		}
		size := uint32(mb) * 1024 * 1024
		if !walfile.IsValidSegmentSize(size) {
			return ov, "", usagef("argument of %s must be a power of two between 1 and 1024", "--wal-segsize")
		}
		ov.WalSegmentSize = size
	}

	return ov, walName, nil
}
