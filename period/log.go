package period

import "github.com/sirupsen/logrus"

var Logger = logrus.StandardLogger()
