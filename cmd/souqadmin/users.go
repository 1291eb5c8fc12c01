package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/wajeeh/souqadmin/internal/core/app"
	"github.com/wajeeh/souqadmin/internal/feature/export"
	"github.com/wajeeh/souqadmin/internal/feature/user"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect and moderate marketplace users",
	}
	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersGetCmd())
	cmd.AddCommand(newUsersSetStatusCmd())
	cmd.AddCommand(newUsersAnalyticsCmd())
	cmd.AddCommand(newUsersExportCmd())
	return cmd
}

func newUsersListCmd() *cobra.Command {
	q := user.DefaultQuery()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users with filters, sorting and pagination",
		RunE: runWithApp(func(a *app.App, cmd *cobra.Command, args []string) error {
			page, err := a.Coordinator().ListUsers(cmd.Context(), q)
			if err != nil {
				return err
			}
			printUserTable(page.Data)
			fmt.Printf("page %d of %d (%d users)\n", page.Page, page.TotalPages, page.Total)
			return nil
		}),
	}

	cmd.Flags().IntVar(&q.Page, "page", q.Page, "page number")
	cmd.Flags().IntVar(&q.Limit, "limit", q.Limit, "users per page")
	cmd.Flags().StringVar(&q.Search, "search", "", "substring match on name, email or mobile")
	cmd.Flags().StringVar(&q.Status, "status", q.Status, "status filter: active|suspended|banned|all")
	cmd.Flags().StringVar(&q.SortBy, "sort", "", "sort field: name|registrationDate|totalSpent")
	cmd.Flags().StringVar(&q.SortOrder, "order", q.SortOrder, "sort order: asc|desc")
	return cmd
}

func newUsersGetCmd() *cobra.Command {
	var fresh bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user's details",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(a *app.App, cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}

			var u *user.User
			if fresh {
				u, err = a.Coordinator().RefreshUser(cmd.Context(), id)
			} else {
				u, err = a.Coordinator().GetUser(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			printUserDetail(u)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&fresh, "fresh", false, "bypass the cache and refetch")
	return cmd
}

func newUsersSetStatusCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "set-status <id> <active|suspended|banned>",
		Short: "Change a user's status",
		Args:  cobra.ExactArgs(2),
		RunE: runWithApp(func(a *app.App, cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}

			u, err := a.Coordinator().UpdateUserStatus(cmd.Context(), id, user.Status(args[1]), reason)
			if err != nil {
				// The notification printer already reported it.
				cmd.SilenceErrors = true
				return err
			}
			printUserDetail(u)
			return nil
		}),
	}

	cmd.Flags().StringVar(&reason, "reason", "", "reason recorded with the status change")
	return cmd
}

func newUsersAnalyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show aggregate user analytics",
		RunE: runWithApp(func(a *app.App, cmd *cobra.Command, args []string) error {
			snap, err := a.Coordinator().Analytics(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("total users:           %d\n", snap.TotalUsers)
			fmt.Printf("active:                %d\n", snap.ActiveUsers)
			fmt.Printf("suspended:             %d\n", snap.SuspendedUsers)
			fmt.Printf("banned:                %d\n", snap.BannedUsers)
			fmt.Printf("new this month:        %d\n", snap.NewUsersThisMonth)
			fmt.Printf("growth rate:           %d%%\n", snap.UserGrowthRate)
			fmt.Println("top spenders:")
			printUserTable(snap.TopSpenders)
			return nil
		}),
	}
}

func newUsersExportCmd() *cobra.Command {
	var compress string
	q := user.DefaultQuery()

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export users to a CSV file",
		RunE: runWithApp(func(a *app.App, cmd *cobra.Command, args []string) error {
			cfg := a.Config().Export
			if compress == "" {
				compress = cfg.Compress
			}
			ctype, err := export.ParseType(compress)
			if err != nil {
				return err
			}

			raw, err := a.Coordinator().Export(cmd.Context(), q)
			if err != nil {
				return err
			}
			encoded, err := export.Compress(raw, ctype)
			if err != nil {
				return err
			}

			path := filepath.Join(cfg.Dir, export.Filename(time.Now(), ctype))
			if err := os.WriteFile(path, encoded, 0o644); err != nil {
				return err
			}
			fmt.Printf("exported %d bytes to %s\n", len(encoded), path)
			return nil
		}),
	}

	cmd.Flags().StringVar(&q.Search, "search", "", "substring match on name, email or mobile")
	cmd.Flags().StringVar(&q.Status, "status", q.Status, "status filter: active|suspended|banned|all")
	cmd.Flags().StringVar(&q.SortBy, "sort", "", "sort field: name|registrationDate|totalSpent")
	cmd.Flags().StringVar(&q.SortOrder, "order", q.SortOrder, "sort order: asc|desc")
	cmd.Flags().StringVar(&compress, "compress", "", "compress the export: gzip|snappy")
	return cmd
}

func printUserTable(users []*user.User) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tMOBILE\tSTATUS\tREGISTERED\tSPENT")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
			u.ID, u.Name, u.Email, u.Mobile, u.Status, u.RegistrationDate, u.TotalSpent)
	}
	w.Flush()
}

func printUserDetail(u *user.User) {
	fmt.Printf("id:                 %d\n", u.ID)
	fmt.Printf("name:               %s (%s)\n", u.Name, u.Avatar)
	fmt.Printf("email:              %s\n", u.Email)
	fmt.Printf("mobile:             %s\n", u.Mobile)
	fmt.Printf("status:             %s\n", u.Status)
	fmt.Printf("registered:         %s\n", u.RegistrationDate)
	if u.Location != "" {
		fmt.Printf("location:           %s\n", u.Location)
	}
	fmt.Printf("bookings:           %d total, %d active, %d completed\n",
		u.TotalBookings, u.ActiveBookings, u.CompletedBookings)
	fmt.Printf("orders:             %d\n", u.TotalOrders)
	fmt.Printf("total spent:        %d\n", u.TotalSpent)
}
