package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Metadata(t *testing.T) {
	assert.Equal(t, "catastro-api", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
}

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "geocode", "predio", "pois", "consulta"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestServeCmd_DefaultPortFromConfig(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "0", flag.DefValue)
}

func TestGeocodeBatchCmd_Flags(t *testing.T) {
	inFlag := geocodeBatchCmd.Flags().Lookup("in")
	require.NotNil(t, inFlag)
	outFlag := geocodeBatchCmd.Flags().Lookup("out")
	require.NotNil(t, outFlag)
	assert.Equal(t, "geocoded.csv", outFlag.DefValue)
}

func TestPredioCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range predioCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["address"])
	assert.True(t, names["coords"])
}
