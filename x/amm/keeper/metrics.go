package keeper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the amm module. Registered once at package load;
// keepers created for tests share the same collectors.
var (
	poolsCreatedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "unitdex",
			Subsystem: "amm",
			Name:      "pools_created_total",
			Help:      "Total number of pools created",
		},
	)

	localSwapsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unitdex",
			Subsystem: "amm",
			Name:      "local_swaps_total",
			Help:      "Total number of same-chain swaps executed",
		},
		[]string{"pool_id", "status"},
	)

	depositsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unitdex",
			Subsystem: "amm",
			Name:      "deposits_total",
			Help:      "Total number of deposits",
		},
		[]string{"pool_id"},
	)

	withdrawalsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unitdex",
			Subsystem: "amm",
			Name:      "withdrawals_total",
			Help:      "Total number of withdrawals",
		},
		[]string{"pool_id", "kind"},
	)

	crossChainSendsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unitdex",
			Subsystem: "amm",
			Name:      "cross_chain_sends_total",
			Help:      "Cross-chain swaps sent",
		},
		[]string{"pool_id", "packet_type"},
	)

	crossChainReceivesCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unitdex",
			Subsystem: "amm",
			Name:      "cross_chain_receives_total",
			Help:      "Cross-chain swaps received",
		},
		[]string{"pool_id", "packet_type"},
	)

	escrowSettlementsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unitdex",
			Subsystem: "amm",
			Name:      "escrow_settlements_total",
			Help:      "Escrow settlements by outcome",
		},
		[]string{"pool_id", "outcome"},
	)

	securityLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unitdex",
			Subsystem: "amm",
			Name:      "security_limit_rejections_total",
			Help:      "Inbound swaps rejected by the unit capacity limit",
		},
		[]string{"pool_id"},
	)
)
