package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// networkCmd represents the network command
var networkCmd = &cobra.Command{
	Use:     "network",
	Aliases: []string{"net"},
	Short:   "Show network information for both ends (alias: net)",
	Long: `Fetch the network endpoint and display server and client details:
IP addresses, whether they are private, Docker detection on the server
side, and geolocation of the client when the server can resolve it.

The server may return a degraded report when its own lookups fail; the
degradation reason is shown alongside whatever information survived.`,
	RunE: runNetwork,
}

func runNetwork(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	info, err := apiClient.Network(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch network info: %w", err)
	}

	if useJSON() {
		return printJSON(info)
	}

	printNetworkInfo(info)
	return nil
}
