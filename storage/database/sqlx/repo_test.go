package sqlxrepos_test

import (
	"testing"

	"github.com/trezcool/centro/tests"
)

func TestRepositories(t *testing.T) {
	testutil.RunRepositorySuite(t, func(t *testing.T) testutil.Repos {
		return testutil.NewSQLRepos(testutil.PrepareDB(t))
	})
}
