package main

import (
	"github.com/AlexZinkM/wallet-approval/cmd/wallet/cmd"

	_ "github.com/AlexZinkM/wallet-approval/docs"
)

// @title        Wallet Approval API
// @version      1.0
// @description  Session-scoped wallet view and human-approved transfers on top of WalletService.
// @BasePath     /
func main() {
	cmd.Execute()
}
