package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vent-ope/vent-ope/ope/safety"
)

// repairCmd applies the clinical action-compliance map to a policy table and
// writes the repaired, normalized result.
var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Demote non-compliant actions in a policy table and renormalize",
	Run: func(cmd *cobra.Command, args []string) {
		setUpLogging()

		policy, err := LoadPolicyTable(repairPolicyPath)
		if err != nil {
			logrus.Fatalf("Loading policy: %v", err)
		}
		defaultPolicy, err := LoadPolicyTable(defaultPolicyPath)
		if err != nil {
			logrus.Fatalf("Loading default policy: %v", err)
		}

		compliant := safety.DefaultComplianceMap()
		if actionSpacePath != "" {
			space, err := safety.LoadActionSpace(actionSpacePath)
			if err != nil {
				logrus.Fatalf("Loading action space: %v", err)
			}
			compliant, err = safety.BuildComplianceMap(space)
			if err != nil {
				logrus.Fatalf("Building compliance map: %v", err)
			}
		}
		safeActions := 0
		for _, ok := range compliant {
			if ok {
				safeActions++
			}
		}
		logrus.Infof("Compliance map: %d of %d actions compliant", safeActions, len(compliant))

		repaired, err := safety.RepairedSafe(policy, defaultPolicy, compliant, greedyRepair)
		if err != nil {
			logrus.Fatalf("Repairing policy: %v", err)
		}
		if err := WritePolicyTable(outputPath, repaired); err != nil {
			logrus.Fatalf("Writing repaired policy: %v", err)
		}
		logrus.Infof("Wrote repaired policy to %s", outputPath)
	},
}

func init() {
	repairCmd.Flags().StringVar(&repairPolicyPath, "policy", "", "CSV matrix for the policy to repair")
	repairCmd.Flags().StringVar(&defaultPolicyPath, "default-policy", "", "CSV matrix used to repair degenerate states")
	repairCmd.Flags().StringVar(&outputPath, "output", "", "Output CSV path for the repaired policy")
	repairCmd.Flags().StringVar(&actionSpacePath, "action-space", "", "Optional YAML file overriding the built-in action space")
	repairCmd.Flags().BoolVar(&greedyRepair, "greedy", false, "Repair degenerate states with the default policy's argmax action")
	_ = repairCmd.MarkFlagRequired("policy")
	_ = repairCmd.MarkFlagRequired("default-policy")
	_ = repairCmd.MarkFlagRequired("output")
}
