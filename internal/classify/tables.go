package classify

// DefaultFolderTable maps top-level source folder names to the prefix used
// for converted filenames.
func DefaultFolderTable() Table {
	return Table{
		{Prefix: "banners and large formats", Slug: "banners"},
		{Prefix: "business cards", Slug: "business_cards"},
		{Prefix: "marketing and promotional materials", Slug: "marketing"},
		{Prefix: "photo and speciality", Slug: "photo_specialty"},
		{Prefix: "promotional products and giveaways", Slug: "promotional"},
		{Prefix: "stickers and labels", Slug: "stickers"},
	}
}

// DefaultCategoryTable maps converted filename prefixes back to the category
// folder they are re-sorted into. It is maintained independently of
// DefaultFolderTable; Check reports drift between the two.
func DefaultCategoryTable() Table {
	const (
		photo      = "photo and speciality"
		marketing  = "marketing and promotional materials"
		promo      = "promotional products and giveaways"
		stickers   = "stickers and labels"
		banners    = "banners and large formats"
		stationery = "business cards"
	)
	return Table{
		{Prefix: "photo_specialty", Slug: photo},
		{Prefix: "acrylic_paints", Slug: photo},
		{Prefix: "canvas_prints", Slug: photo},
		{Prefix: "mounted_photos", Slug: photo},
		{Prefix: "photo_calenders", Slug: photo},
		{Prefix: "marketing", Slug: marketing},
		{Prefix: "a4_flyers", Slug: marketing},
		{Prefix: "custom_notebooks", Slug: marketing},
		{Prefix: "trifold_bronchures", Slug: marketing},
		{Prefix: "a3__posters", Slug: marketing},
		{Prefix: "promotional", Slug: promo},
		{Prefix: "water_bottles", Slug: promo},
		{Prefix: "custom_pens", Slug: promo},
		{Prefix: "custom_mugs_", Slug: promo},
		{Prefix: "custom_t-shirts", Slug: promo},
		{Prefix: "stickers", Slug: stickers},
		{Prefix: "car_decals_", Slug: stickers},
		{Prefix: "vinyl_stickers", Slug: stickers},
		{Prefix: "window_decals_", Slug: stickers},
		{Prefix: "product_labels", Slug: stickers},
		{Prefix: "banners", Slug: banners},
		{Prefix: "backdrop_banners", Slug: banners},
		{Prefix: "vinyl_banners", Slug: banners},
		{Prefix: "custom_flags", Slug: banners},
		{Prefix: "roll_up_banners", Slug: banners},
		{Prefix: "business_cards", Slug: stationery},
		{Prefix: "standard_business_cards", Slug: stationery},
		{Prefix: "folded_business_cards", Slug: stationery},
		{Prefix: "custom_envelopes", Slug: stationery},
		{Prefix: "letterheads", Slug: stationery},
		{Prefix: "spot_uv_business_cards", Slug: stationery},
		{Prefix: "presentation_folders", Slug: stationery},
	}
}

// DefaultProducts maps converted filename prefixes to front-end product pages.
func DefaultProducts() []Product {
	p := func(prefix, category, sub, path string) Product {
		return Product{Prefix: prefix, Category: category, Subcategory: sub, Path: path}
	}
	return []Product{
		// banners & large format
		p("backdrop_banners", "banners-large-format", "backdrop-banners", "banners-large-format/backdrop-banners"),
		p("vinyl_banners", "banners-large-format", "vinyl-banners", "banners-large-format/vinyl-banners"),
		p("roll_up_banners", "banners-large-format", "roll-up-banners", "banners-large-format/roll-up-banners"),
		p("custom_flags", "banners-large-format", "custom-flags", "banners-large-format/custom-flags"),

		// business stationery
		p("standard_business_cards", "business-stationery", "business-cards-standard", "business-stationery/business-cards/standard"),
		p("folded_business_cards", "business-stationery", "business-cards-folded", "business-stationery/business-cards/folded"),
		p("spot_uv_business_cards", "business-stationery", "business-cards-spot-uv", "business-stationery/business-cards/spot-uv"),
		p("custom_envelopes", "business-stationery", "envelopes", "business-stationery/envelopes"),
		p("letterheads", "business-stationery", "letterheads", "business-stationery/letterheads"),
		p("presentation_folders", "business-stationery", "presentation-folders", "business-stationery/presentation-folders"),

		// marketing & promotional materials
		p("a3__posters", "marketing-promotional", "posters-a3", "marketing-promotional/posters/a3"),
		p("a4_flyers", "marketing-promotional", "flyers-a4", "marketing-promotional/flyers/a4"),
		p("trifold_bronchures", "marketing-promotional", "brochures-tri-fold", "marketing-promotional/brochures/tri-fold"),
		p("custom_notebooks", "marketing-promotional", "notebooks-custom", "marketing-promotional/notebooks/custom"),

		// photo & specialty
		p("canvas_prints", "photo-specialty", "canvas-prints", "photo-specialty/canvas-prints"),
		p("mounted_photos", "photo-specialty", "mounted-photos", "photo-specialty/mounted-photos"),
		p("photo_calenders", "marketing-promotional", "calendars-2025", "marketing-promotional/calendars/2025"),
		p("acrylic_paints", "photo-specialty", "acrylic-paints", "photo-specialty/acrylic-paints"),

		// promotional products
		p("custom_mugs_", "promotional-products", "mugs", "promotional-products/mugs"),
		p("custom_pens", "promotional-products", "pens", "promotional-products/pens"),
		p("custom_t-shirts", "promotional-products", "t-shirts", "promotional-products/t-shirts"),
		p("water_bottles", "promotional-products", "water-bottles", "promotional-products/water-bottles"),

		// stickers & labels
		p("car_decals_", "stickers-labels", "car-decals", "stickers-labels/car-decals"),
		p("vinyl_stickers", "stickers-labels", "vinyl-stickers", "stickers-labels/vinyl-stickers"),
		p("window_decals_", "stickers-labels", "window-decals", "stickers-labels/window-decals"),
		p("product_labels", "stickers-labels", "product-labels", "stickers-labels/product-labels"),
	}
}
