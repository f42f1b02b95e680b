package common

const (
	RedisStreamStockAnalyzer = "stock.analyzer"

	RedisStreamGroup    = "worker-group"
	RedisStreamConsumer = "worker-consumer"
)
