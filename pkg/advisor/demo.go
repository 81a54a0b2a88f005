package advisor

// DemoStations returns a small fixed candidate list around Irvine, CA. It
// backs the CLI when no database has been imported yet and doubles as a
// known-good dataset for experimenting with modes and priorities.
func DemoStations() []Station {
	return []Station{
		{
			ID:            "arco-irvine-1",
			Name:          "Arco",
			Brand:         "Arco",
			Address:       "14401 Culver Dr, Irvine, CA",
			Price:         4.99,
			DistanceMiles: 2.1,
			IsOpen:        true,
			Amenities:     []string{AmenityConvenienceStore},
			Coordinate:    Coordinate{Latitude: 33.7133, Longitude: -117.7906},
		},
		{
			ID:            "chevron-irvine-1",
			Name:          "Chevron",
			Brand:         "Chevron",
			Address:       "4001 Barranca Pkwy, Irvine, CA",
			Price:         5.09,
			DistanceMiles: 1.2,
			IsOpen:        true,
			Amenities:     []string{AmenityFood, AmenityRestroom, AmenityConvenienceStore},
			Coordinate:    Coordinate{Latitude: 33.6846, Longitude: -117.7966},
		},
		{
			ID:            "shell-irvine-1",
			Name:          "Shell",
			Brand:         "Shell",
			Address:       "17231 Jamboree Rd, Irvine, CA",
			Price:         5.05,
			DistanceMiles: 3.8,
			IsOpen:        true,
			Amenities:     []string{AmenityRestroom, AmenityConvenienceStore},
			Coordinate:    Coordinate{Latitude: 33.6987, Longitude: -117.8512},
		},
		{
			ID:            "76-irvine-1",
			Name:          "76",
			Brand:         "76",
			Address:       "2222 Michelson Dr, Irvine, CA",
			Price:         4.89,
			DistanceMiles: 6.5,
			IsOpen:        false,
			Amenities:     []string{AmenityRestroom},
			Coordinate:    Coordinate{Latitude: 33.6761, Longitude: -117.8531},
		},
		{
			ID:            "costco-irvine-1",
			Name:          "Costco Gas Station",
			Brand:         "Costco",
			Address:       "115 Technology Dr W, Irvine, CA",
			Price:         4.65,
			DistanceMiles: 4.9,
			IsOpen:        true,
			Amenities:     []string{},
			Coordinate:    Coordinate{Latitude: 33.6550, Longitude: -117.7450},
		},
		{
			ID:            "7-eleven-irvine-1",
			Name:          "7-Eleven",
			Brand:         "7-Eleven",
			Address:       "4010 Walnut Ave, Irvine, CA",
			Price:         5.15,
			DistanceMiles: 1.8,
			IsOpen:        true,
			Amenities:     []string{AmenityFood, AmenityConvenienceStore},
			Coordinate:    Coordinate{Latitude: 33.7029, Longitude: -117.7706},
		},
	}
}
