package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"speedprobe/pkg/ui"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show service metadata for the target server",
	Long: `Fetch the API root endpoint and display the service banner and
its advertised routes. Useful to confirm the server is reachable and
speaking the expected protocol before running a test.`,
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	info, err := apiClient.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch server info: %w", err)
	}

	if useJSON() {
		return printJSON(info)
	}

	fmt.Println(ui.FormatTitle("Server Info"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("URL", apiClient.BaseURL()))
	fmt.Println(ui.RenderKeyValue("Message", info.Message))

	if len(info.Routes) > 0 {
		fmt.Println()
		fmt.Println(ui.StyleHeader.Render("Routes"))

		names := make([]string, 0, len(info.Routes))
		for name := range info.Routes {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Println(ui.RenderKeyValue("  "+name, info.Routes[name]))
		}
	}

	return nil
}
