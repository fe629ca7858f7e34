package admindash_test

import (
	"log"
	"os"
	"testing"

	"github.com/dalemusser/attendhub/internal/testutil"
)

func TestMain(m *testing.M) {
	if err := testutil.BootTemplates(); err != nil {
		log.Fatalf("boot templates: %v", err)
	}
	os.Exit(m.Run())
}
