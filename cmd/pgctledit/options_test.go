package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/INLOpen/pgctledit/core"
	"github.com/INLOpen/pgctledit/override"
)

func TestParseUint32(t *testing.T) {
	v, err := parseUint32("-o", "500")
	require.NoError(t, err)
	assert.Equal(t, uint32(500), v)

	v, err = parseUint32("-o", "0x10")
	require.NoError(t, err)
	assert.Equal(t, uint32(16), v)

	_, err = parseUint32("-o", "abc")
	require.Error(t, err)
	var ue usageError
	assert.True(t, errors.As(err, &ue))

	_, err = parseUint32("-o", "4294967296")
	require.Error(t, err)
}

func TestParsePair(t *testing.T) {
	a, b, err := parsePair("-m", "10,20")
	require.NoError(t, err)
	assert.Equal(t, uint32(10), a)
	assert.Equal(t, uint32(20), b)

	_, _, err = parsePair("-m", "10")
	require.Error(t, err)

	_, _, err = parsePair("-m", "10,")
	require.Error(t, err)
}

func TestBuildOverrides_Defaults(t *testing.T) {
	ov, walName, err := buildOverrides(&cliOptions{})
	require.NoError(t, err)
	assert.Empty(t, walName)
	assert.Equal(t, override.New(), ov)
}

func TestBuildOverrides_FullSet(t *testing.T) {
	opts := &cliOptions{
		nextOid:     "500",
		nextXid:     "1000",
		xidEpoch:    "2",
		multiIDs:    "50,10",
		multiOffset: "0",
		commitTsIDs: "3,900",
		oldestXid:   "3",
		nextWALFile: "000000070000000000000001",
		walSegSize:  "64",
	}

	ov, walName, err := buildOverrides(opts)
	require.NoError(t, err)
	assert.Equal(t, uint32(500), ov.NextOid)
	assert.Equal(t, uint32(1000), ov.NextXid)
	assert.Equal(t, uint32(2), ov.XidEpoch)
	assert.Equal(t, uint32(50), ov.NextMulti)
	assert.Equal(t, uint32(10), ov.OldestMulti)
	assert.Equal(t, uint32(0), ov.NextMultiOffset)
	assert.Equal(t, uint32(3), ov.OldestCommitTsXid)
	assert.Equal(t, uint32(900), ov.NewestCommitTsXid)
	assert.Equal(t, uint32(3), ov.OldestXid)
	assert.Equal(t, "000000070000000000000001", walName)
	assert.Equal(t, uint32(64*1024*1024), ov.WalSegmentSize)
}

func TestBuildOverrides_Rejections(t *testing.T) {
	cases := []struct {
		name string
		opts cliOptions
	}{
		{"ZeroOid", cliOptions{nextOid: "0"}},
		{"NonNormalNextXid", cliOptions{nextXid: "2"}},
		{"ZeroNextMulti", cliOptions{multiIDs: "0,10"}},
		{"ZeroOldestMulti", cliOptions{multiIDs: "10,0"}},
		{"MalformedMultiPair", cliOptions{multiIDs: "10"}},
		{"SentinelMultiOffset", cliOptions{multiOffset: "4294967295"}},
		{"ReservedCommitTsXid", cliOptions{commitTsIDs: "2,0"}},
		{"SentinelEpoch", cliOptions{xidEpoch: "0xFFFFFFFF"}},
		{"NonNormalOldestXid", cliOptions{oldestXid: "1"}},
		{"ShortWALFileName", cliOptions{nextWALFile: "0000000100000001"}},
		{"NonHexWALFileName", cliOptions{nextWALFile: "00000001000000000000000G"}},
		{"SegSizeNotPowerOfTwo", cliOptions{walSegSize: "3"}},
		{"SegSizeOutOfRange", cliOptions{walSegSize: "2048"}},
		{"SegSizeNotANumber", cliOptions{walSegSize: "big"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := buildOverrides(&tc.opts)
			require.Error(t, err)
			var ue usageError
			assert.True(t, errors.As(err, &ue), "expected a usage error, got %v", err)
		})
	}
}

func TestBuildOverrides_CommitTsZeroMeansNoChange(t *testing.T) {
	ov, _, err := buildOverrides(&cliOptions{commitTsIDs: "0,900"})
	require.NoError(t, err)
	assert.Equal(t, core.InvalidTransactionID, ov.OldestCommitTsXid)
	assert.Equal(t, uint32(900), ov.NewestCommitTsXid)
}
