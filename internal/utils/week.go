package utils

import "time"

// WeekNumber returns the 1-based campaign week containing now.
// Any time before campaignStart counts as week 1.
func WeekNumber(now, campaignStart time.Time) int {
	diff := now.Sub(campaignStart)
	if diff < 0 {
		return 1
	}
	return int(diff/CampaignWeek) + 1
}

// NextWeekStart returns the instant the week after now begins
func NextWeekStart(now, campaignStart time.Time) time.Time {
	if now.Before(campaignStart) {
		return campaignStart.Add(CampaignWeek)
	}
	week := WeekNumber(now, campaignStart)
	return campaignStart.Add(time.Duration(week) * CampaignWeek)
}
