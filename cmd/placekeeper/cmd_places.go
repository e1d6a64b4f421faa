package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"placekeeper/internal/geo"
	"placekeeper/internal/store"
)

var (
	addTitle   string
	addImage   string
	addLat     float64
	addLng     float64
	addAddress string
)

// addCmd records a new place. Title, image and coordinates are required;
// the address is optional and may be resolved via reverse geocoding when
// that is enabled in the config.
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new place",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := launch(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.RequireAuthenticated(); err != nil {
			return err
		}

		address := addAddress
		if address == "" && a.Geocoder != nil {
			resolved, err := a.Geocoder.ReverseGeocode(cmd.Context(), geo.Coordinates{Lat: addLat, Lng: addLng})
			if err != nil {
				// Best effort: the place commits without an address.
				logger.Warn("reverse geocoding failed", zap.Error(err))
			} else {
				address = resolved
			}
		}

		id, err := a.Places.Insert(cmd.Context(), store.DraftPlace{
			Title:    addTitle,
			ImageURI: addImage,
			Location: store.Location{Lat: addLat, Lng: addLng, Address: address},
		})
		if err != nil {
			return err
		}

		fmt.Printf("Added place %s\n", id)
		return nil
	},
}

// listCmd prints all places in insertion order.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded places",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := launch(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.RequireAuthenticated(); err != nil {
			return err
		}

		places, err := a.Places.All(cmd.Context())
		if err != nil {
			return err
		}
		if len(places) == 0 {
			fmt.Println("No places recorded yet.")
			return nil
		}

		for _, p := range places {
			fmt.Printf("%s  %-20s  (%.4f, %.4f)\n", p.ID, p.Title, p.Location.Lat, p.Location.Lng)
		}
		return nil
	},
}

// showCmd prints one place by id.
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a place by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := launch(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.RequireAuthenticated(); err != nil {
			return err
		}

		place, err := a.Places.ByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Title:    %s\n", place.Title)
		fmt.Printf("Image:    %s\n", place.ImageURI)
		fmt.Printf("Location: %.6f, %.6f\n", place.Location.Lat, place.Location.Lng)
		if place.Location.Address != "" {
			fmt.Printf("Address:  %s\n", place.Location.Address)
		}
		return nil
	},
}

// deleteCmd removes a place by id.
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a place by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := launch(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.RequireAuthenticated(); err != nil {
			return err
		}

		if err := a.Places.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "place title (required)")
	addCmd.Flags().StringVar(&addImage, "image", "", "photo URI (required)")
	addCmd.Flags().Float64Var(&addLat, "lat", 0, "latitude (required)")
	addCmd.Flags().Float64Var(&addLng, "lng", 0, "longitude (required)")
	addCmd.Flags().StringVar(&addAddress, "address", "", "address (optional, geocoded when omitted)")
	_ = addCmd.MarkFlagRequired("title")
	_ = addCmd.MarkFlagRequired("image")
	_ = addCmd.MarkFlagRequired("lat")
	_ = addCmd.MarkFlagRequired("lng")
}
