package keygen

import (
	"testing"

	"github.com/sirupsen/logrus"
	"go.uber.org/goleak"
)

func init() {
	Logger.SetLevel(logrus.FatalLevel)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
