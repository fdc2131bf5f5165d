package service

// normalizePage page 从 1 开始；pageSize 给默认值并封顶，防止一把捞全表
func normalizePage(page, pageSize int) (p, ps, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize, (page - 1) * pageSize
}
