package main

import (
	"context"
	"os"
	"vietlott-backend/cmd/vietlott-cli/commands"
	"vietlott-backend/lib/serviceutil"
	"vietlott-backend/lib/telemetry"
)

func main() {
	telemetry.InitSlog(false)

	tel, err := telemetry.SetupFromEnv(context.Background(), "vietlott-cli")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer tel.Shutdown(context.Background())

	commands.ExecuteContext(serviceutil.SignalContext())
}
