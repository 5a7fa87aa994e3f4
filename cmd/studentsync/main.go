package main

import (
	"context"
	"os"

	"github.com/yigit/studentsync/internal/pkg/logger"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.Error().Err(err).Msg("studentsync failed")
		os.Exit(1)
	}
}
