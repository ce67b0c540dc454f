/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	// Import all Kubernetes client auth plugins (e.g. Azure, GCP, OIDC, etc.)
	_ "k8s.io/client-go/plugin/pkg/client/auth"

	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/utils/ptr"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	mywlv1alpha1 "github.com/vijay-papanaboina/myworkload-operator/api/v1alpha1"
	"github.com/vijay-papanaboina/myworkload-operator/internal/controller"
)

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("setup")
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(mywlv1alpha1.AddToScheme(scheme))
	// +kubebuilder:scaffold:scheme
}

type options struct {
	metricsAddr             string
	probeAddr               string
	enableLeaderElection    bool
	maxConcurrentReconciles int
	shutdownGracePeriod     time.Duration
	reporterInstance        string
	zap                     zap.Options
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{
		zap: zap.Options{
			Development: true,
			TimeEncoder: zapcore.ISO8601TimeEncoder,
		},
	}

	cmd := &cobra.Command{
		Use:           "myworkload-operator",
		Short:         "Reconciles MyWorkLoad resources",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.metricsAddr, "metrics-bind-address", ":8080", "The address the metrics endpoint binds to. Use 0 to disable.")
	flags.StringVar(&opts.probeAddr, "health-probe-bind-address", ":8081", "The address the probe endpoint binds to.")
	flags.BoolVar(&opts.enableLeaderElection, "leader-elect", false, "Enable leader election for controller manager.")
	flags.IntVar(&opts.maxConcurrentReconciles, "max-concurrent-reconciles", 2, "Number of MyWorkLoads reconciled in parallel.")
	flags.DurationVar(&opts.shutdownGracePeriod, "shutdown-grace-period", 30*time.Second, "How long in-flight reconciliations may run after a shutdown signal.")
	flags.StringVar(&opts.reporterInstance, "reporter-instance", defaultInstance(), "Instance name recorded on published events.")

	goFlags := flag.NewFlagSet("zap", flag.ExitOnError)
	opts.zap.BindFlags(goFlags)
	flags.AddGoFlagSet(goFlags)

	return cmd
}

func run(opts *options) error {
	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts.zap)))

	cfg := ctrl.GetConfigOrDie()

	// -------------------------------------------------------------------------
	// The CRD must be installed before anything starts. Use an uncached client:
	// the manager cache would block on an unknown kind.
	// -------------------------------------------------------------------------
	directClient, err := client.New(cfg, client.Options{Scheme: scheme})
	if err != nil {
		setupLog.Error(err, "unable to create bootstrap client")
		return err
	}
	checkCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := controller.CheckQueryable(checkCtx, directClient); err != nil {
		setupLog.Error(err, "CRD is not queryable. Is the CRD installed?")
		setupLog.Info(controller.InstallHint)
		return err
	}

	mgr, err := ctrl.NewManager(cfg, ctrl.Options{
		Scheme:                  scheme,
		Metrics:                 metricsserver.Options{BindAddress: opts.metricsAddr},
		HealthProbeBindAddress:  opts.probeAddr,
		LeaderElection:          opts.enableLeaderElection,
		LeaderElectionID:        "myworkload-operator.org.mars",
		GracefulShutdownTimeout: ptr.To(opts.shutdownGracePeriod),
	})
	if err != nil {
		setupLog.Error(err, "unable to start manager")
		return err
	}

	diagnostics := controller.NewDiagnostics(controller.EventReporter{
		Controller: controller.ControllerName,
		Instance:   opts.reporterInstance,
	}, nil)

	if err := (&controller.MyWorkLoadReconciler{
		Client:                  mgr.GetClient(),
		Scheme:                  mgr.GetScheme(),
		APIReader:               mgr.GetAPIReader(),
		Diagnostics:             diagnostics,
		MaxConcurrentReconciles: opts.maxConcurrentReconciles,
	}).SetupWithManager(mgr); err != nil {
		setupLog.Error(err, "unable to create controller", "controller", "MyWorkLoad")
		return err
	}
	// +kubebuilder:scaffold:builder

	if opts.metricsAddr != "0" {
		if err := mgr.AddMetricsServerExtraHandler("/diagnostics", diagnostics); err != nil {
			setupLog.Error(err, "unable to register diagnostics handler")
			return err
		}
	}
	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up health check")
		return err
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up ready check")
		return err
	}

	setupLog.Info("starting manager", "reporter", diagnostics.Reporter())
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		setupLog.Error(err, "problem running manager")
		return err
	}
	return nil
}

// defaultInstance names this replica on published events.
func defaultInstance() string {
	if name := os.Getenv("POD_NAME"); name != "" {
		return name
	}
	if host, err := os.Hostname(); err == nil {
		return host
	}
	return controller.ControllerName
}
