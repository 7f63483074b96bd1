package util

// 平台抽成比例，剩余部分归讲师
const AdminRevenueShare = 0.30

// SplitRevenue 按固定比例拆分收入为平台/讲师两部分
func SplitRevenue(total float64) (adminShare, educatorShare float64) {
	adminShare = total * AdminRevenueShare
	educatorShare = total - adminShare
	return adminShare, educatorShare
}
