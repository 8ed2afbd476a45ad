package cmd

import (
	"fmt"
	"text/tabwriter"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"

	"github.com/spf13/cobra"
)

var hotelCmd = &cobra.Command{
	Use:   "hotel",
	Short: "Manage hotels",
}

var newHotel request.CreateHotelRequest

var hotelAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a hotel",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(ctx, rt.config, rt.logger)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.close()

		service := usecase.NewService(st.repo, rt.config, nil, rt.logger)
		hotel, err := service.Hotel.CreateHotel(ctx, &newHotel)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created hotel %s (%s)\n", hotel.ID, hotel.Name)
		return nil
	},
}

var hotelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List hotels",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(ctx, rt.config, rt.logger)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.close()

		service := usecase.NewService(st.repo, rt.config, nil, rt.logger)
		hotels, err := service.Hotel.ListHotels(ctx)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tROOMS\tCAPACITY\tPRICE")
		for _, h := range hotels {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
				h.ID, h.Name, h.Location, h.TotalRooms, h.CapacityPerRoom, h.PricePerNight)
		}
		return tw.Flush()
	},
}

func init() {
	f := hotelAddCmd.Flags()
	f.StringVar(&newHotel.Name, "name", "", "hotel name")
	f.StringVar(&newHotel.Address, "address", "", "street address")
	f.StringVar(&newHotel.Location, "location", "", "city or area used by search")
	f.StringVar(&newHotel.Description, "description", "", "free text description")
	f.IntVar(&newHotel.TotalRooms, "rooms", 0, "number of rooms")
	f.IntVar(&newHotel.CapacityPerRoom, "capacity", 2, "guests per room")
	f.StringVar(&newHotel.PricePerNight, "price", "", "price per room per night")
	_ = hotelAddCmd.MarkFlagRequired("name")
	_ = hotelAddCmd.MarkFlagRequired("location")
	_ = hotelAddCmd.MarkFlagRequired("price")

	hotelCmd.AddCommand(hotelAddCmd, hotelListCmd)
}
