package ledger

import (
	"context"
	"fmt"
)

type demoWorker struct {
	input      AddWorkerInput
	attendance []demoDay
	payments   []demoPayment
}

type demoDay struct {
	date   string
	status Status
}

type demoPayment struct {
	date   string
	amount float64
}

var demoRoster = []demoWorker{
	{
		input: AddWorkerInput{Name: "Suresh Patel", PhoneNumber: "9876543210", DailyWage: 600},
		attendance: []demoDay{
			{"2023-10-01", StatusPresent}, {"2023-10-02", StatusPresent}, {"2023-10-03", StatusAbsent},
			{"2023-10-04", StatusPresent}, {"2023-10-05", StatusPresent},
		},
		payments: []demoPayment{{"2023-10-05", 2000}},
	},
	{
		input: AddWorkerInput{Name: "Meena Kumari", PhoneNumber: "9876543211", DailyWage: 550},
		attendance: []demoDay{
			{"2023-10-01", StatusPresent}, {"2023-10-02", StatusPresent}, {"2023-10-03", StatusPresent},
			{"2023-10-04", StatusPresent}, {"2023-10-05", StatusAbsent},
		},
		payments: []demoPayment{{"2023-10-05", 2200}},
	},
	{
		input: AddWorkerInput{Name: "Rajesh Singh", PhoneNumber: "9876543212", DailyWage: 650},
		attendance: []demoDay{
			{"2023-10-01", StatusPresent}, {"2023-10-02", StatusPresent}, {"2023-10-03", StatusPresent},
			{"2023-10-04", StatusPresent}, {"2023-10-05", StatusPresent},
		},
		payments: []demoPayment{{"2023-10-05", 300}},
	},
	{
		input: AddWorkerInput{Name: "Anita Devi", PhoneNumber: "9876543213", DailyWage: 550},
	},
}

// SeedDemo は作業員が1人もいない場合にデモ用のデータを投入します。投入した場合は true を返します。
func (e *Engine) SeedDemo(ctx context.Context) (bool, error) {
	e.mu.RLock()
	empty := len(e.workers) == 0
	e.mu.RUnlock()
	if !empty {
		return false, nil
	}

	for _, demo := range demoRoster {
		worker, err := e.AddWorker(ctx, demo.input)
		if err != nil {
			return false, fmt.Errorf("ledger: seed worker %s: %w", demo.input.Name, err)
		}
		for _, day := range demo.attendance {
			if _, err := e.MarkAttendance(ctx, MarkAttendanceInput{WorkerID: worker.ID, Date: day.date, Status: day.status}); err != nil {
				return false, fmt.Errorf("ledger: seed attendance %s: %w", day.date, err)
			}
		}
		for _, p := range demo.payments {
			if _, err := e.RecordPayment(ctx, RecordPaymentInput{WorkerID: worker.ID, Date: p.date, Amount: p.amount}); err != nil {
				return false, fmt.Errorf("ledger: seed payment %s: %w", p.date, err)
			}
		}
	}
	e.logger.Info("ledger: demo data seeded", "workers", len(demoRoster))
	return true, nil
}
