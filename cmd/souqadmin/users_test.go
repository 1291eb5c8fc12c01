package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportCmdCarriesListFilters(t *testing.T) {
	cmd := newUsersExportCmd()
	for _, name := range []string{"search", "status", "sort", "order", "compress"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing --%s", name)
	}
}

func TestListCmdFlags(t *testing.T) {
	cmd := newUsersListCmd()
	for _, name := range []string{"page", "limit", "search", "status", "sort", "order"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing --%s", name)
	}
}
