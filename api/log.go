package api

import (
	"github.com/sirupsen/logrus"

	"github.com/cloudchase/inference-services/logging"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}
