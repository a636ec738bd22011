package projectconfig

// Column describes one report column. Value is the stable key; IsUsing hides
// the column without removing it.
type Column struct {
	Name    string `json:"name" validate:"required"`
	Value   string `json:"value" validate:"required"`
	IsUsing bool   `json:"isUsing"`
}

// DefaultSelectibleColumns returns the fixed metric columns every project starts with.
func DefaultSelectibleColumns() []Column {
	return []Column{
		{Name: "Data Start", Value: "data_start", IsUsing: true},
		{Name: "Data Stop", Value: "data_stop", IsUsing: true},
		{Name: "Campaign Name", Value: "campaign_name", IsUsing: true},
		{Name: "Ad Set Name", Value: "ad_set_name", IsUsing: true},
		{Name: "Ad Name", Value: "ad_name", IsUsing: true},
		{Name: "Impressions", Value: "impressions", IsUsing: true},
		{Name: "Clicks", Value: "clicks", IsUsing: true},
		{Name: "Spend", Value: "spend", IsUsing: true},
		{Name: "CTR", Value: "ctr", IsUsing: true},
		{Name: "CPC", Value: "cpc", IsUsing: true},
		{Name: "CPM", Value: "cpm", IsUsing: true},
	}
}

// DefaultUsualColumns returns the behavioral metric columns.
func DefaultUsualColumns() []Column {
	return []Column{
		{Name: "Link Click", Value: "link_click", IsUsing: true},
		{Name: "Page Views", Value: "page_views", IsUsing: true},
		{Name: "Conversations Started", Value: "conversations_started", IsUsing: true},
	}
}
