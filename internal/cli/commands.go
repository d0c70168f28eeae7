package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"modeldctl/internal/common/fsutil"
	"modeldctl/pkg/types"
)

func newCreateCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:     "create NAME",
		Short:   "Create a model from a Modelfile",
		Example: "  modeldctl create mymodel -f ./Modelfile",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modelfile, err := fsutil.ReadText(file)
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			s, err := c.CreateStream(cmd.Context(), &types.CreateRequest{
				Name:      types.Ref(args[0]),
				Modelfile: modelfile,
			})
			if err != nil {
				return err
			}
			return renderStream(a.out, s)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "Modelfile", "Path to the Modelfile")
	return cmd
}

func newPushCmd(a *app) *cobra.Command {
	var insecure bool
	cmd := &cobra.Command{
		Use:     "push NAME",
		Short:   "Upload a model to its registry",
		Example: "  modeldctl push ns/mymodel:latest",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			s, err := c.PushStream(cmd.Context(), &types.PushRequest{
				Name:     types.Ref(args[0]),
				Insecure: insecure,
			})
			if err != nil {
				return err
			}
			return renderStream(a.out, s)
		},
	}
	cmd.Flags().BoolVar(&insecure, "insecure", false, "Allow plain-HTTP registries")
	return cmd
}

func newPullCmd(a *app) *cobra.Command {
	var insecure bool
	cmd := &cobra.Command{
		Use:   "pull NAME",
		Short: "Download a model from its registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			s, err := c.PullStream(cmd.Context(), &types.PullRequest{
				Name:     types.Ref(args[0]),
				Insecure: insecure,
			})
			if err != nil {
				return err
			}
			return renderStream(a.out, s)
		},
	}
	cmd.Flags().BoolVar(&insecure, "insecure", false, "Allow plain-HTTP registries")
	return cmd
}

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load NAME",
		Short: "Load a model into server memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			out, err := c.Load(cmd.Context(), &types.LoadRequest{Model: types.Ref(args[0])})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "loaded %s\n", out.Model)
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List models on the server",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			out, err := c.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 8, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tDIGEST\tSIZE\tMODIFIED")
			for _, m := range out.Models {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Name, shortDigest(m.Digest), formatSize(m.Size), formatTime(m.ModifiedAt))
			}
			return tw.Flush()
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show the Modelfile of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			out, err := c.Show(cmd.Context(), &types.ShowRequest{Name: types.Ref(args[0])})
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, out.Modelfile)
			return nil
		},
	}
}

func newCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "cp SOURCE DESTINATION",
		Aliases: []string{"copy"},
		Short:   "Copy a model under a new name",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			return c.Copy(cmd.Context(), &types.CopyRequest{
				Source:      types.Ref(args[0]),
				Destination: types.Ref(args[1]),
			})
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"delete"},
		Short:   "Remove a model from the server",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			return c.Delete(cmd.Context(), &types.DeleteRequest{Name: types.Ref(args[0])})
		},
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print client and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.out, "client %s\n", Version)
			c, err := a.client()
			if err != nil {
				return err
			}
			v, err := c.Version(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "server %s\n", v)
			return nil
		},
	}
}
