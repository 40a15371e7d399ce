package server

import (
	"context"
	"fmt"
	"time"

	"github.com/and161185/gas2door/internal/model"
)

const orphanReportType = "orphaned_address"

// OrphanReportControl files every address left behind by a failed order with
// the order service, so it can be cleaned up there. Failed reports are retried
// on the next poll.
func (srv *Server) OrphanReportControl(ctx context.Context) {
	workerCount := 3

	ch := make(chan model.OrphanedAddress, 10*workerCount)
	go srv.CollectOrphans(ctx, ch)

	for i := 0; i < workerCount; i++ {
		go srv.ReportOrphans(ctx, ch)
	}
}

func (srv *Server) CollectOrphans(ctx context.Context, ch chan model.OrphanedAddress) {
	for {
		srv.collectOnce(ctx, ch)

		select {
		case <-ctx.Done():
			return
		case <-time.After(srv.config.ReportInterval):
		}
	}
}

// collectOnce queues the unreported orphans that are not already queued and
// returns how many were queued.
func (srv *Server) collectOnce(ctx context.Context, ch chan model.OrphanedAddress) int {
	orphans, err := srv.storage.GetUnreportedOrphans(ctx, cap(ch))
	if err != nil {
		srv.deps.Logger.Errorf("collect orphans: %v", err)
		return 0
	}

	queued, skipped := 0, 0
	for _, orphan := range orphans {
		if _, busy := srv.reporting.LoadOrStore(orphan.AddressID, struct{}{}); busy {
			continue
		}

		select {
		case ch <- orphan:
			queued++
		default:
			srv.reporting.Delete(orphan.AddressID)
			skipped++
		}
	}
	if skipped > 0 {
		srv.deps.Logger.Warnf("channel full, skipped %d orphans", skipped)
	}
	return queued
}

func (srv *Server) ReportOrphans(ctx context.Context, ch chan model.OrphanedAddress) {
	for {
		select {
		case <-ctx.Done():
			return
		case orphan := <-ch:
			if err := srv.reportOrphan(ctx, orphan); err != nil {
				srv.deps.Logger.Errorf("report orphan: %v", err)
			}
			srv.reporting.Delete(orphan.AddressID)
		}
	}
}

func (srv *Server) reportOrphan(ctx context.Context, orphan model.OrphanedAddress) error {
	// the address belongs to the visitor's backend account; report with their token if it is still around
	s := srv.sessions.Get(ctx, orphan.VisitorID).Get()

	report := model.Report{
		Type:      orphanReportType,
		AddressID: orphan.AddressID,
		Reason:    orphan.Reason,
	}
	if err := srv.backend.CreateReport(ctx, token(s), report); err != nil {
		return fmt.Errorf("address %s: %w", orphan.AddressID, err)
	}

	if err := srv.storage.MarkOrphanReported(ctx, orphan.AddressID); err != nil {
		return fmt.Errorf("mark %s reported: %w", orphan.AddressID, err)
	}

	srv.deps.Logger.Infof("reported orphaned address %s", orphan.AddressID)
	return nil
}
