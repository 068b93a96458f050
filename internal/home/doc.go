// Package home implements the smart-home simulator service.
//
// The Service is the only owner of component state. Every mutation follows
// the same path:
//
//	caller ─▶ Service ─▶ component.Execute ─▶ event log ─▶ store ─▶ observers
//	                                                                  │
//	                                   plain component.Result ◀───────┘
//
// Persistence is write-through: each successful mutation rewrites the
// affected records. A write failure never fails the operation and never
// rolls back memory; it is logged at Warn and reported to observers through
// PersistenceFailed.
//
// # Usage
//
//	svc := home.New(store.New(kv, "smartHome"))
//	svc.SetLogger(log)
//	svc.AddObserver(metrics)
//
//	svc.Load(ctx)
//
//	info, err := svc.CreateComponent(ctx, "Desk Lamp", "light", "Office")
//	if err != nil {
//	    return err
//	}
//	res := svc.ExecuteAction(ctx, info.ID, "setBrightness", component.Params{"brightness": 40})
//	if !res.Success {
//	    fmt.Println(res.Message)
//	}
package home
