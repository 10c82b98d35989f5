package service

import "time"

func (s *AlertService) SetClock(now func() time.Time) { s.now = now }

func (s *StatsService) SetClock(now func() time.Time) { s.now = now }

func (s *NotificationSender) SetBackoff(d time.Duration) { s.backoff = d }
