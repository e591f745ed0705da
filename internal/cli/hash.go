package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vfxtool/pkg/hash"
)

// hashCommand creates the hash command.
func (c *CLI) hashCommand() *cobra.Command {
	var (
		path  bool
		short bool
		hex   bool
	)

	cmd := &cobra.Command{
		Use:   "hash <text...>",
		Short: "Print the string or path code of each argument",
		Long: `Print the hash stored in effect files for each argument.

By default arguments are hashed as string codes. With --path they are
hashed as path codes, using the engine's extension table merged with the
[extensions] table of the config file.
With --short the 32-bit code used for variation names is printed.`,
		Example: `  vfxtool hash EmitterColor
  vfxtool hash --path /as/fx/smoke.ftex`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if path && short {
				return fmt.Errorf("--path and --short cannot be combined")
			}

			var hasher *hash.Hasher
			if path {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				hasher = cfg.Hasher()
			}

			for _, text := range args {
				var code uint64
				switch {
				case path:
					code = hasher.PathCode(text)
				case short:
					code = uint64(hash.String32(text))
				default:
					code = hash.String(text)
				}
				printKeyValue(text, formatCode(code, hex))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&path, "path", "p", false, "hash arguments as paths")
	cmd.Flags().BoolVarP(&short, "short", "s", false, "print the 32-bit string code")
	cmd.Flags().BoolVarP(&hex, "hex", "x", false, "print codes in hexadecimal")

	return cmd
}

func formatCode(code uint64, hex bool) string {
	if hex {
		return "0x" + strconv.FormatUint(code, 16)
	}
	return strconv.FormatUint(code, 10)
}
