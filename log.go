package qfactor

import (
	"github.com/qfactor/qfactor/keygen"
	"github.com/qfactor/qfactor/period"
	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func init() {
	Logger = logrus.StandardLogger()
	period.Logger = Logger
	keygen.Logger = Logger
}
