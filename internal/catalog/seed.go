package catalog

import "assetlib/pkg/contracts/domain"

// SeedKPIs returns the KPI records a fresh store starts with
func SeedKPIs() []domain.KPI {
	return []domain.KPI{
		{
			ID:   "revenue_growth",
			Name: "Revenue Growth Rate",
			BusinessQuestions: []string{
				"Are we meeting our growth targets?",
				"How does our growth compare to industry average?",
				"Which regions are driving growth?",
			},
			MetricIDs:              []string{"total_revenue", "yoy_growth"},
			Description:            "Year-over-year revenue growth rate across all business units",
			Calculation:            "(Current Period Revenue - Prior Period Revenue) / Prior Period Revenue * 100",
			VisualsAvailable:       []string{"Line Chart", "Bar Chart"},
			AffiliateApplicability: []string{"All"},
			Areas:                  []string{"Sales", "Finance", "Executive"},
		},
		{
			ID:   "operating_margin",
			Name: "Operating Margin",
			BusinessQuestions: []string{
				"How efficient are our operations?",
				"Are cost reduction initiatives working?",
			},
			MetricIDs:              []string{"operating_income", "revenue", "costs"},
			Description:            "Operating profit as a percentage of revenue",
			Calculation:            "Operating Income / Revenue * 100",
			VisualsAvailable:       []string{"Trend Line"},
			AffiliateApplicability: []string{"All"},
			Areas:                  []string{"Operations", "Finance"},
		},
		{
			ID:   "market_share",
			Name: "Market Share",
			BusinessQuestions: []string{
				"Are we gaining or losing market share?",
				"What's our share in key segments?",
			},
			MetricIDs:              []string{"sales_volume", "segment_share"},
			Description:            "Company's share of total addressable market",
			Calculation:            "Company Sales / Total Industry Sales * 100",
			VisualsAvailable:       []string{"Pie Chart"},
			AffiliateApplicability: []string{"subsidary1", "subsidary2"},
			Areas:                  []string{"Marketing", "Sales", "Strategy"},
		},
	}
}

// SeedLayouts returns the Layout records a fresh store starts with
func SeedLayouts() []domain.Layout {
	return []domain.Layout{
		{
			ID:              "sales_dashboard",
			Name:            "Sales Performance Dashboard",
			Description:     "Monthly sales performance tracking across regions",
			NumberOfPages:   3,
			KPIs:            []string{"revenue_growth", "market_share"},
			PreviewImageURL: "/api/placeholder/400/300",
			CreatedBy:       "John Doe",
			CreatedAt:       "2024-01-15",
			Favorite:        true,
			ShareableLink:   "https://dashboard/sales-perf",
		},
		{
			ID:              "operations_overview",
			Name:            "Operations Overview",
			Description:     "Key operational metrics",
			NumberOfPages:   2,
			KPIs:            []string{"operating_margin"},
			PreviewImageURL: "/api/placeholder/400/300",
			CreatedBy:       "Jane Smith",
			CreatedAt:       "2024-01-20",
			Favorite:        false,
			ShareableLink:   "https://dashboard/ops-overview",
		},
	}
}

// SeedStoryboards returns the Storyboard records a fresh store starts with
func SeedStoryboards() []domain.Storyboard {
	return []domain.Storyboard{
		{
			ID:          "quarterly_review",
			Name:        "Q4 2024 Performance Review",
			Description: "Quarterly performance analysis for board presentation",
			CoupledKPIs: []string{"revenue_growth", "operating_margin"},
			Filters: domain.StoryboardFilters{
				TimeRange: "Q4 2024",
				Region:    "Global",
			},
			ApplicableAffiliates: []string{"subsidary1", "subsidary2"},
			CreatedBy:            "John Doe",
			CreatedAt:            "2024-01-15",
			HasAccess:            true,
		},
		{
			ID:          "market_analysis",
			Name:        "Market Share Analysis",
			Description: "Competitive analysis and market positioning",
			CoupledKPIs: []string{"market_share"},
			Filters: domain.StoryboardFilters{
				TimeRange: "2024",
				Segment:   "Enterprise",
			},
			ApplicableAffiliates: []string{"subsidary1"},
			CreatedBy:            "Jane Smith",
			CreatedAt:            "2024-01-20",
			HasAccess:            false,
			AccessRequestStatus:  domain.AccessRequestPending,
		},
	}
}

// SeedAssetState returns the featured/trending/favorites lists a fresh store starts with
func SeedAssetState() domain.AssetState {
	return domain.AssetState{
		Featured: []domain.Asset{
			{ID: "revenue_growth", Type: domain.AssetTypeKPI},
			{ID: "sales_dashboard", Type: domain.AssetTypeLayout},
		},
		Trending: []domain.Asset{
			{ID: "operating_margin", Type: domain.AssetTypeKPI},
		},
		Favorites: []domain.Asset{},
	}
}
