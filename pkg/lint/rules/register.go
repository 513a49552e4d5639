package rules

import (
	"sync"

	"github.com/yaklabco/solidhunter/pkg/lint"
)

var (
	registryOnce sync.Once
	registry     *lint.Registry
)

// Registry returns the registry of built-in rules. It is built on first use
// and shared afterwards.
func Registry() *lint.Registry {
	registryOnce.Do(func() {
		registry = lint.NewRegistry(Categories()...)
	})
	return registry
}

// Categories returns the built-in rules grouped by category, in merge order.
func Categories() []lint.Category {
	return []lint.Category{
		{
			Name: CategoryBestPractices,
			Specs: []lint.Spec{
				customErrorsMeta.spec(NewCustomErrorsRule),
				explicitTypesMeta.spec(NewExplicitTypesRule),
				functionMaxLinesMeta.spec(NewFunctionMaxLinesRule),
				maxLineLengthMeta.spec(NewMaxLineLengthRule),
				maxStatesCountMeta.spec(NewMaxStatesCountRule),
				noConsoleMeta.spec(NewNoConsoleRule),
				noEmptyBlockMeta.spec(NewNoEmptyBlockRule),
				noGlobalImportMeta.spec(NewNoGlobalImportRule),
				oneContractPerFileMeta.spec(NewOneContractPerFileRule),
				payableFallbackMeta.spec(NewPayableFallbackRule),
				reasonStringMeta.spec(NewReasonStringRule),
			},
		},
		{
			Name: CategoryNaming,
			Specs: []lint.Spec{
				constNameSnakecaseMeta.spec(NewConstNameSnakecaseRule),
				contractNameCamelcaseMeta.spec(NewContractNameCamelcaseRule),
				eventNameCamelcaseMeta.spec(NewEventNameCamelcaseRule),
				foundryTestFunctionsMeta.spec(NewFoundryTestFunctionsRule),
				funcNameMixedcaseMeta.spec(NewFuncNameMixedcaseRule),
				funcParamNameMixedcaseMeta.spec(NewFuncParamNameMixedcaseRule),
				modifierNameMixedcaseMeta.spec(NewModifierNameMixedcaseRule),
				namedParametersMappingMeta.spec(NewNamedParametersMappingRule),
				privateVarsLeadingUnderscoreMeta.spec(NewPrivateVarsLeadingUnderscoreRule),
				useForbiddenNameMeta.spec(NewUseForbiddenNameRule),
				varNameMixedcaseMeta.spec(NewVarNameMixedcaseRule),
			},
		},
		{
			Name: CategoryOrder,
			Specs: []lint.Spec{
				importOnTopMeta.spec(NewImportOnTopRule),
				orderingMeta.spec(NewOrderingRule),
				visibilityModifierOrderMeta.spec(NewVisibilityModifierOrderRule),
			},
		},
		{
			Name: CategoryMiscellaneous,
			Specs: []lint.Spec{
				duplicateContractNameMeta.spec(NewDuplicateContractNameRule),
			},
		},
		{
			Name: CategorySecurity,
			Specs: []lint.Spec{
				avoidTxOriginMeta.spec(NewAvoidTxOriginRule),
				funcVisibilityMeta.spec(NewFuncVisibilityRule),
				noInlineAssemblyMeta.spec(NewNoInlineAssemblyRule),
				notRelyOnTimeMeta.spec(NewNotRelyOnTimeRule),
				stateVisibilityMeta.spec(NewStateVisibilityRule),
			},
		},
	}
}
