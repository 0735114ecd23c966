package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"priority-scheduler/api"
	"priority-scheduler/config"
)

func newServeCmd() *cobra.Command {
	var configPath string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduling HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Port = port
			}
			return api.Serve(cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file (default ./config.yaml)")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port, overrides the config file")

	return cmd
}

func loadConfig(path string) (*config.SchedulerConfig, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
	}
	return config.Load(v)
}
